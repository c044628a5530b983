package http

import (
	_ "embed"

	"github.com/valyala/fasthttp"
)

// fasthttp doesn't yet support serving embed.FS files, so serve the docs
// page manually.
// GitHub Issue: https://github.com/valyala/fasthttp/issues/974

//go:embed docs.html
var contentDocsHtml []byte

func docsHandler(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("text/html")
	ctx.Response.SetBody(contentDocsHtml)
}
