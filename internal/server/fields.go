package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/smallbiznis/dashboard/internal/form"
)

// bindFields reads a form or JSON body into a field bag. JSON numbers and
// booleans are kept in their text form.
func bindFields(c *gin.Context) (form.Fields, error) {
	fields := form.Fields{}

	if c.ContentType() == binding.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, invalidRequestError()
		}
		for key, value := range body {
			switch v := value.(type) {
			case nil:
			case string:
				fields[key] = v
			case float64:
				fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				fields[key] = strconv.FormatBool(v)
			case json.Number:
				fields[key] = v.String()
			default:
				fields[key] = fmt.Sprint(v)
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, invalidRequestError()
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

// wantsJSON reports whether the client submitted or asked for JSON rather than
// a plain HTML form post.
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == binding.MIMEJSON {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), binding.MIMEJSON)
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
