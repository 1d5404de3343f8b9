package server

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/jonathan/resumate/internal/types"
	"github.com/jonathan/resumate/internal/ui"
)

const pageTemplate = "index.html"

// renderer implements echo.Renderer over the embedded templates
type renderer struct {
	templates *template.Template
}

func newRenderer() (*renderer, error) {
	tmpl, err := template.ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{templates: tmpl}, nil
}

// Render executes the named template
func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pageData is the view of a ui.State handed to the template
type pageData struct {
	Phase          ui.Phase
	JobDescription string
	ResumeText     string
	CanSubmit      bool
	Editable       bool
	Bullets        []string
	CopyAll        string
	Error          string
	Notice         string
	MinLength      int
}

func newPageData(state *ui.State) pageData {
	inputs := state.Inputs()
	return pageData{
		Phase:          state.Phase(),
		JobDescription: inputs.JobDescription,
		ResumeText:     inputs.ResumeText,
		CanSubmit:      state.CanSubmit(),
		Editable:       state.Editable(),
		Bullets:        state.Bullets(),
		CopyAll:        state.CopyAll(),
		Error:          state.ErrorMessage(),
		MinLength:      types.MinInputLength,
	}
}
