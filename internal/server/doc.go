// Package server exposes the grading engine as an MCP (Model Context
// Protocol) tool server.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: one JSON-RPC request per line on stdin
//   - Output: one JSON-RPC response per line on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Get width and height
//
// Grading:
//   - grade_image: Run a preset, inline recipe or recipe file over an image
//   - list_stages: Describe the stage types recipes can use
//   - list_presets: Describe the built-in recipes
//
// Color Operations:
//   - convert_color: Convert a color between spaces
//   - sample_color: Read pixels as display values and in a chosen space
//
// # Image Caching
//
// Decoded inputs are cached by path for the lifetime of the server. Writing a
// graded image evicts its output path so a later call reads the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000, the message "Tool execution failed" and the Go error string as
// data. Malformed request lines get a -32700 parse error.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
