package routes

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/fitpro-app/FitProBack/internal/config"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root { --bg: #f6f7f4; --text: #132019; --muted: #536258; --border: #d8ddd6; }
    body { margin: 0; font-family: Georgia, "Times New Roman", serif; color: var(--text); background: var(--bg); }
    main { max-width: 880px; margin: 0 auto; padding: 48px 20px 64px; }
    h1 { margin-bottom: 4px; }
    p.lead { color: var(--muted); margin-top: 0; }
    table { width: 100%; border-collapse: collapse; background: #fff; border: 1px solid var(--border); }
    th, td { text-align: left; padding: 10px 14px; border-bottom: 1px solid var(--border); }
    code { font-family: ui-monospace, Menlo, monospace; font-size: 0.92em; }
    .method { font-weight: bold; }
  </style>
</head>
<body>
<main>
  <h1>{{ .Title }}</h1>
  <p class="lead">Profile and auth API. Protected endpoints expect <code>Authorization: Bearer &lt;token&gt;</code>.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Description</th></tr>
    {{ range .Endpoints }}
    <tr><td class="method">{{ .Method }}</td><td><code>{{ .Path }}</code></td><td>{{ .Description }}</td></tr>
    {{ end }}
  </table>
</main>
</body>
</html>`

type docsEndpoint struct {
	Method      string
	Path        string
	Description string
}

var docsEndpoints = []docsEndpoint{
	{"GET", "/health", "Liveness check"},
	{"POST", "/api/auth/register", "Create a credential and start a session"},
	{"POST", "/api/auth/login", "Authenticate and start a session"},
	{"POST", "/api/auth/logout", "Clear the active session"},
	{"GET", "/api/auth/me", "Active session identity"},
	{"GET", "/api/v1/profile", "Displayed profile with derived metrics"},
	{"PUT", "/api/v1/profile", "Merge edits and recompute BMI and calories"},
}

// registerDocsRoutes mounts the dev-only endpoint reference. Outside of
// development, or with docs disabled, nothing is mounted.
func registerDocsRoutes(app *fiber.App, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	indexTemplate := template.Must(template.New("docs").Parse(docsIndexHTML))
	pageData := struct {
		Title     string
		Endpoints []docsEndpoint
	}{
		Title:     "FitPro API Reference",
		Endpoints: docsEndpoints,
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}
		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
