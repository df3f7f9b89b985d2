package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# napsync

## 1. Cluster release
Reads the **Liberacion** sheet of the workbook and checks the cluster in the
` + "`clusters`" + ` table.

* Cluster found: writes ` + "`generador/alcance_<cluster>.xlsx`" + ` with the stored
  records and a bold row of pending values.
* Cluster not found: writes ` + "`generador/liberacion_<cluster>.xlsx`" + ` with the
  release request.

The recipients of the region (` + "`correos/Correo_R1.md`" + ` or ` + "`Correo_R2.md`" + `) are shown afterwards.

## 2. NAP update
Reads the **Naps** sheet, looks every NAP code up in ` + "`inv_naps`" + ` and writes the
missing ones to ` + "`Registros_Naps/Inventario_Naps_YYYY-MM-DD.xlsx`" + `.

## Configuration
* ` + "`config.toml`" + ` next to the executable: workbook path, sheets, output folders, database driver.
* ` + "`configuracion/conexion.json`" + `: PostgreSQL credentials.
* ` + "`NAPSYNC_DB_*`" + ` variables or a ` + "`.env`" + ` file override the credentials.
`

// renderMarkdown terminal rendering of md; the raw text when rendering fails
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (a *app) showHelp() {
	fmt.Fprintln(a.out, renderMarkdown(helpMarkdown))
}
