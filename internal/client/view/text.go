package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText draws v as plain text, one block per card.
func WriteText(w io.Writer, v View) error {
	if len(v.Cards) == 0 {
		_, err := fmt.Fprintln(w, v.Empty)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range v.Cards {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		title := c.Name
		if c.Weather != "" {
			title += "  [" + c.Weather + "]"
		}
		fmt.Fprintf(tw, "#%s\t%s\n", c.ID, title)
		fmt.Fprintf(tw, "\taddress:\t%s\n", c.Address)
		fmt.Fprintf(tw, "\towner:\t%s\n", c.Owner)
		pic := PicturePlaceholder
		if c.PictureURL != "" {
			pic = c.PictureURL
		}
		fmt.Fprintf(tw, "\tpicture:\t%s\n", pic)
		if actions := cardActions(c); actions != "" {
			fmt.Fprintf(tw, "\tactions:\t%s\n", actions)
		}
	}
	return tw.Flush()
}

func cardActions(c Card) string {
	var a []string
	if c.CanEdit {
		a = append(a, "edit "+c.ID.String())
	}
	if c.CanDelete {
		a = append(a, "delete "+c.ID.String())
	}
	return strings.Join(a, ", ")
}
