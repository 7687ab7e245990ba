package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mediatag/internal/term"
)

const banner = `                    _ _       _
 _ __ ___   ___  __| (_) __ _| |_ __ _  __ _
| '_ ` + "`" + ` _ \ / _ \/ _` + "`" + ` | |/ _` + "`" + ` | __/ _` + "`" + ` |/ _` + "`" + ` |
| | | | | |  __/ (_| | | (_| | || (_| | (_| |
|_| |_| |_|\___|\__,_|_|\__,_|\__\__,_|\__, |
                                       |___/`

// PrintBanner prints the ASCII art banner in the title style.
func PrintBanner(w io.Writer, th *term.Theme) {
	fmt.Fprintln(w, th.Styles.Title.Render(banner))
}
