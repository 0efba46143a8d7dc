package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

var (
	bold    = color.New(color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatDefault
	return t
}

// renderOutcomes writes one row per selected asset in selection order
func renderOutcomes(w io.Writer, result *model.ReleaseResult) {
	if len(result.Outcomes) == 0 {
		fmt.Fprintln(w, "No assets were selected")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{bold.Sprint("Asset"), bold.Sprint("Status"), bold.Sprint("Detail")})
	for _, o := range result.Outcomes {
		if o.Succeeded() {
			t.AppendRow(table.Row{o.Asset.RelativePath, success.Sprint("uploaded"), o.RemoteURL})
		} else {
			t.AppendRow(table.Row{o.Asset.RelativePath, failure.Sprint("failed"), o.FailureReason()})
		}
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d", len(result.Succeeded()), len(result.Outcomes)), ""})
	t.Render()
}

func renderAssets(w io.Writer, assets []*model.SelectedAsset) {
	if len(assets) == 0 {
		fmt.Fprintln(w, "No assets matched")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{bold.Sprint("Path"), bold.Sprint("Content Type")})
	for _, a := range assets {
		t.AppendRow(table.Row{a.RelativePath, a.ContentType})
	}
	t.Render()
}
