// Package server exposes a textfx.Renderer over HTTP.
//
// Routes:
//
//	GET  /fonts     JSON array of available font file names
//	POST /render    JSON render request, answers {"image": "data:image/png;base64,..."}
//	POST /download  JSON {"image": dataURL}, answers the decoded PNG as an attachment
//
// Failures answer 500 with {"error": msg}; render failures add a "trace".
package server
