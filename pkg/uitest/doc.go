// Package uitest provides helpers for testing bubbletea models.
//
// [NewTestModel] runs a model whose Update returns its concrete type under
// teatest. [Screen] reduces captured output to plain lines, and [Runs]
// splits styled output into runs of equal style:
//
//	tm := uitest.NewTestModel(t, ui.New(cfg, grid), uitest.Compact)
//	tm.Send(tea.KeyMsg{Type: tea.KeyPgDown})
//	uitest.WaitForText(t, tm.Output(), "rows 24")
package uitest
