package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/laflopet/Employee-onboarding-system/internal/controller"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

// NOTE: kept as html/template so the tree builds without `templ generate`.
// Each block is exposed as a templ.Component for the handlers.

var tmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"date":    domain.FechaIngresoDisplay,
	"email":   emailOr,
	"otros":   otros,
	"itoa":    itoa,
	"fields":  formFields,
	"editing": func(s controller.State) bool { return s.Editing() },
	"prompt":  func() string { return controller.DeletePrompt },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Registro de empleados</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;600&family=IBM+Plex+Sans:wght@400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body { background: var(--paper); color: var(--ink); font-family: 'IBM Plex Sans', sans-serif; margin: 0; }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .card { background: rgba(255,255,255,0.7); border: 1px solid var(--ledger); border-left: 4px solid var(--ink); padding: 20px; }
  .field-label { font-family: 'IBM Plex Mono', monospace; font-size: 0.6rem; font-weight: 600; letter-spacing: 0.1em; text-transform: uppercase; color: var(--muted); display: block; margin-bottom: 2px; }
  input, select { background: white; border: 1px solid var(--rule); border-bottom: 2px solid var(--ink); padding: 6px 8px; font-family: 'IBM Plex Mono', monospace; font-size: 0.85rem; width: 100%; }
  input:focus, select:focus { border-bottom-color: var(--accent); outline: none; }
  .btn { font-family: 'IBM Plex Mono', monospace; font-weight: 600; font-size: 0.75rem; letter-spacing: 0.08em; padding: 6px 14px; border: 2px solid var(--ink); cursor: pointer; text-transform: uppercase; background: white; }
  .btn-primary { background: var(--ink); color: white; }
  .btn-danger { color: var(--accent); border-color: var(--accent); }
  .btn[disabled] { opacity: 0.4; cursor: wait; }
  table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
  th { text-align: left; font-family: 'IBM Plex Mono', monospace; font-size: 0.65rem; letter-spacing: 0.12em; text-transform: uppercase; color: var(--muted); border-bottom: 2px solid var(--ink); padding: 6px; }
  td { border-bottom: 1px solid var(--ledger); padding: 6px; }
  .notice { border-left: 4px solid var(--accent2); padding: 8px 12px; margin-bottom: 12px; background: white; }
  .error { border-left: 4px solid var(--accent); padding: 8px 12px; margin-bottom: 12px; background: white; color: var(--accent); }
  .modal { position: fixed; inset: 0; background: rgba(13,17,23,0.45); display: flex; align-items: center; justify-content: center; }
  .modal .card { width: min(720px, 94vw); background: var(--paper); }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator, .htmx-request.htmx-indicator { opacity: 1; }
</style>
</head>
<body hx-indicator="#loading">
<div style="max-width:1100px;margin:0 auto;padding:32px 24px;">
  <div style="display:flex;justify-content:space-between;align-items:flex-end;margin-bottom:24px;">
    <div>
      <div class="mono" style="font-size:0.65rem;letter-spacing:0.2em;color:var(--muted);">CIDENET · TALENTO HUMANO</div>
      <h1 class="mono" style="font-size:1.5rem;margin:4px 0 0;">Registro de empleados</h1>
    </div>
    <div id="loading" class="htmx-indicator mono" style="font-size:0.75rem;">Cargando…</div>
  </div>
  {{template "workspace" .}}
</div>
</body>
</html>

{{define "workspace"}}
<div id="workspace">
  {{if .Notice}}<div class="notice" role="status">{{.Notice}}</div>{{end}}
  {{if and .LastError (not .Draft)}}<div class="error" role="alert">{{.LastError}}</div>{{end}}

  <div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:12px;">
    <div class="mono" id="employee-count">{{len .Employees}} empleado(s)</div>
    <div style="display:flex;gap:8px;">
      <a class="btn" href="/export.pdf">Exportar PDF</a>
      <button class="btn" hx-post="/refresh" hx-target="#workspace" hx-swap="outerHTML" {{if .Busy}}disabled{{end}}>Actualizar</button>
      <button class="btn btn-primary" hx-post="/form/new" hx-target="#workspace" hx-swap="outerHTML" {{if .Busy}}disabled{{end}}>Nuevo empleado</button>
    </div>
  </div>

  {{if .Busy}}<div class="mono" style="font-size:0.75rem;margin-bottom:8px;">Cargando…</div>{{end}}

  <div class="card">
  {{if .Employees}}
    <table>
      <thead><tr><th>Nombre</th><th>Identificación</th><th>Email</th><th>Área</th><th>Ingreso</th><th></th></tr></thead>
      <tbody>
      {{range .Employees}}
        <tr id="employee-{{.ID}}">
          <td>{{.PrimerNombre}}{{with otros .}} {{.}}{{end}} {{.PrimerApellido}} {{.SegundoApellido}}</td>
          <td>{{.TipoIdentificacion}} <span class="mono">{{.NumeroIdentificacion}}</span></td>
          <td class="mono">{{email .}}</td>
          <td>{{.Area}}</td>
          <td class="mono">{{date .FechaIngreso}}</td>
          <td style="white-space:nowrap;">
            <button class="btn" hx-post="/form/edit/{{.ID}}" hx-target="#workspace" hx-swap="outerHTML">Editar</button>
            <button class="btn btn-danger" hx-post="/employees/{{.ID}}/delete" hx-vals='{"confirm":"yes"}'
              hx-confirm="{{prompt}}" hx-target="#workspace" hx-swap="outerHTML">Eliminar</button>
          </td>
        </tr>
      {{end}}
      </tbody>
    </table>
  {{else}}
    <div style="color:var(--muted);">No hay empleados registrados.</div>
  {{end}}
  </div>

  {{with .Draft}}{{template "form" $}}{{end}}
</div>
{{end}}

{{define "form"}}
<div class="modal">
  <div class="card">
    <h2 class="mono" style="font-size:1rem;margin-top:0;">{{if editing .}}Editar empleado{{else}}Registrar empleado{{end}}</h2>
    {{if .LastError}}<div class="error" role="alert">{{.LastError}}</div>{{end}}
    <form hx-post="/form/submit" hx-target="#workspace" hx-swap="outerHTML">
      <div class="grid">
      {{range fields .Draft}}{{template "field" .}}{{end}}
      </div>
      <div style="display:flex;justify-content:flex-end;gap:8px;margin-top:16px;">
        <button type="button" class="btn" hx-post="/form/cancel" hx-target="#workspace" hx-swap="outerHTML">Cancelar</button>
        <button type="submit" class="btn btn-primary" {{if .Busy}}disabled{{end}}>{{if editing .}}Actualizar{{else}}Registrar{{end}}</button>
      </div>
    </form>
  </div>
</div>
{{end}}

{{define "field"}}
<div id="field-{{.Name}}">
  <label class="field-label" for="in-{{.Name}}">{{.Label}}{{if .Required}} *{{end}}</label>
  {{if eq .Kind "select"}}
  <select id="in-{{.Name}}" name="{{.Name}}" hx-post="/form/field" hx-vals='{"field":"{{.Name}}"}' hx-trigger="change" hx-target="#field-{{.Name}}" hx-swap="outerHTML">
    {{$v := .Value}}{{range .Choices}}<option value="{{.}}"{{if eq . $v}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{else}}
  <input id="in-{{.Name}}" type="{{.Kind}}" name="{{.Name}}" value="{{.Value}}"{{if .MaxLen}} maxlength="{{itoa .MaxLen}}"{{end}}{{if .Required}} required{{end}}
    hx-post="/form/field" hx-vals='{"field":"{{.Name}}"}' hx-trigger="change" hx-target="#field-{{.Name}}" hx-swap="outerHTML">
  {{end}}
</div>
{{end}}`))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

// Page renders the full document around the workspace.
func Page(s controller.State) templ.Component { return component("page", s) }

// Workspace renders the swappable region: notices, table and the open form.
func Workspace(s controller.State) templ.Component { return component("workspace", s) }

// FieldInput renders one form input with its stored value.
func FieldInput(f FieldView) templ.Component { return component("field", f) }
