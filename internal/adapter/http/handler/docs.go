package handler

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const specPath = "/swagger/spec"

//go:embed openapi.yaml
var openAPISpec []byte

// specETag lets clients revalidate the spec without downloading it again.
var specETag = func() string {
	sum := sha256.Sum256(openAPISpec)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui" data-spec="{{.SpecURL}}"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    const root = document.getElementById('swagger-ui');
    SwaggerUIBundle({url: root.dataset.spec, domNode: root, deepLinking: true});
  </script>
</body>
</html>`))

var renderedDocs = func() []byte {
	var buf bytes.Buffer
	if err := docsPage.Execute(&buf, struct{ Title, SpecURL string }{"Aura Ledger API", specPath}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()

// APISpec serves openapi.yaml, answering 304 when If-None-Match matches.
func APISpec(c *gin.Context) {
	c.Header("ETag", specETag)
	if c.GetHeader("If-None-Match") == specETag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/yaml", openAPISpec)
}

// APIDocs serves a Swagger UI page pointed at APISpec.
func APIDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", renderedDocs)
}
