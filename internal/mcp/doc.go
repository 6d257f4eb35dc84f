// Package mcp exposes the document operations as Model Context Protocol tools
// using the mcp-go library (github.com/mark3labs/mcp-go).
//
// # Tools
//
//   - search_files: substring search over filenames and content, optionally
//     restricted to PUBLIC documents
//   - get_file_content: full content of one document by exact filename
//   - list_files: every document, optionally filtered by glob and privacy level
//
// Every tool is read-only and idempotent. Results are rendered by the format
// package in structured (JSON) or narrative (Markdown) form.
//
// # Errors
//
// Failures never abort the server. They are returned as tool error results
// whose text names the error kind (directory_not_found, read_error,
// not_found, invalid_argument) next to a human-readable message.
//
// # Transport
//
// The server talks JSON-RPC 2.0 over stdin/stdout, so nothing else may write
// to stdout while it runs. Logging goes to stderr or the debug log file.
package mcp
