package container

import (
	"github.com/epoint/springlab/net/resp"
	"github.com/gin-gonic/gin"
)

// ManageRoutes registers the component listing under r
func (c *Container) ManageRoutes(r *gin.RouterGroup) {
	r.GET("/components", func(ctx *gin.Context) {
		statuses := c.Status()
		result := make(map[string][]map[string]any)

		for name, w := range c.List() {
			group := w.Metadata.Group
			if group == "" {
				group = w.Metadata.Name
			}
			result[group] = append(result[group], map[string]any{
				"metadata": w.Metadata,
				"status":   statuses[name],
			})
		}

		resp.Success(ctx.Writer, map[string]any{
			"order":      c.Order(),
			"components": result,
		})
	})
}

// RegisterRoutes lets every component register its own routes
func (c *Container) RegisterRoutes(r *gin.RouterGroup) {
	for _, name := range c.Names() {
		c.instance(name).RegisterRoutes(r)
	}
}
