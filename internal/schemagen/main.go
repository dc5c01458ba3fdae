// Command schemagen writes the JSON schema of a vscroll kind.
//
// It is run through go:generate from the package of each kind.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/macropower/vscroll/api/v1beta1/configs"
	"github.com/macropower/vscroll/api/v1beta1/traces"
)

const modulePath = "github.com/macropower/vscroll"

var (
	kind    = flag.String("kind", "config", "Kind to generate, one of: [config trace]")
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
	root    = flag.String("root", "../../..", "Path to the module root, used to read doc comments")
)

func main() {
	flag.Parse()

	var v any

	switch *kind {
	case "config":
		v = configs.New()
	case "trace":
		v = traces.New()
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	r := &jsonschema.Reflector{}

	err := r.AddGoComments(modulePath, *root)
	if err != nil {
		log.Fatalf("read doc comments: %v", err)
	}

	jsData, err := json.MarshalIndent(r.Reflect(v), "", "  ")
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
