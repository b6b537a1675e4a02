package deploy

import (
	"fmt"
	"io"
)

func Render(w io.Writer, plan Plan) {
	dir := plan.Dir
	if dir == "" {
		dir = "."
	}
	fmt.Fprintf(w, "Directory: %s\n", dir)
	fmt.Fprintf(w, "Target: %s/%s\n", plan.Remote, plan.Branch)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Steps:")
	for _, step := range plan.Steps {
		fmt.Fprintf(w, "- %s: %s\n", step.Name, step)
	}
	if plan.SiteURL != "" {
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Site: %s\n", plan.SiteURL)
	}
}

func banner(w io.Writer, plan Plan) {
	fmt.Fprintln(w, "Deploy completed!")
	if plan.SiteURL != "" {
		fmt.Fprintf(w, "Your site is live at: %s\n", plan.SiteURL)
	}
}
