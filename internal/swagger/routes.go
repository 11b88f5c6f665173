package swagger

import (
	"fmt"
	"log/slog"
	"strings"

	"auditservice/internal/env"
	"auditservice/internal/errmsg"
	"auditservice/internal/swagger/docs"
	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/swaggo/swag"
)

const swaggerUIPath = "https://unpkg.com/swagger-ui-dist@5"

var uiTemplate = fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Audit Service API Docs</title>
  <link rel="stylesheet" href="%s/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="%s/swagger-ui-bundle.js"></script>
  <script src="%s/swagger-ui-standalone-preset.js"></script>
  <script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/doc.json',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
      layout: 'StandaloneLayout',
      deepLinking: true,
      displayRequestDuration: true,
    });
  };
  </script>
</body>
</html>`, swaggerUIPath, swaggerUIPath, swaggerUIPath)

// Register serves swagger-ui at /docs and the registered doc at
// /docs/doc.json, stamped with the running version.
func Register(router fiber.Router) {
	if version := strings.TrimSpace(env.VERSION); version != "" && version != "unknown" {
		docs.SwaggerInfo.Version = version
	}

	router.Get("/docs", func(c fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(uiTemplate)
	})

	router.Get("/docs/doc.json", func(c fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			slog.ErrorContext(c, "swagger doc unavailable", "error", err)
			return utils.StatusError(c, errmsg.InternalServerError)
		}

		c.Type("json", "utf-8")
		return c.SendString(doc)
	})
}
