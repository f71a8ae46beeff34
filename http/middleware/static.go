package middleware

import (
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/slopjs/slop/http/engine"
)

// Static serves files below root for GET requests. A request path that does
// not name a readable file falls through to the rest of the chain by calling
// the continuation; a hit answers with the file's bytes and a Content-Type
// derived from its extension.
func Static(root string) engine.HandlerFunc {
	return func(req *engine.Request, res *engine.Response, next engine.Next) {
		name := path.Clean("/" + req.Path)
		if strings.Contains(name, "..") {
			next(nil)
			return
		}

		fp := filepath.Join(root, filepath.FromSlash(name))
		info, err := os.Stat(fp)
		if os.IsNotExist(err) || (err == nil && info.IsDir()) {
			next(nil)
			return
		}
		if err != nil {
			next(err)
			return
		}

		data, err := os.ReadFile(fp)
		if err != nil {
			next(err)
			return
		}

		ct := mime.TypeByExtension(filepath.Ext(fp))
		if ct == "" {
			ct = "application/octet-stream"
		}

		res.Bytes(http.StatusOK, ct, data)
	}
}
