package mcp

import (
	"docscan/internal/query"

	"github.com/mark3labs/mcp-go/mcp"
)

// All tools only read the document root and touch nothing outside it.
func readOnlyTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts,
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
	return mcp.NewTool(name, opts...)
}

// searchFilesTool defines the search_files MCP tool.
var searchFilesTool = readOnlyTool("search_files",
	mcp.WithTitleAnnotation("Search Files by Query"),
	mcp.WithDescription("Search documents whose filename or content contains the query (case-insensitive). "+
		"Results are sorted by filename and carry each file's privacy level."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search term matched against filenames and file content"),
		mcp.MinLength(1),
		mcp.MaxLength(query.MaxQueryLength),
	),
	mcp.WithBoolean("exclude_sensitive",
		mcp.Description("Only return PUBLIC files, hiding SENSITIVE and CONFIDENTIAL ones"),
		mcp.DefaultBool(false),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
		mcp.DefaultNumber(query.DefaultSearchLimit),
		mcp.Min(1),
	),
	mcp.WithString("response_format",
		mcp.Description("Output format: 'structured' (JSON) or 'narrative' (Markdown)"),
		mcp.Enum("structured", "narrative", "json", "markdown"),
		mcp.DefaultString("structured"),
	),
)

// getFileContentTool defines the get_file_content MCP tool.
var getFileContentTool = readOnlyTool("get_file_content",
	mcp.WithTitleAnnotation("Get File Content"),
	mcp.WithDescription("Retrieve the complete content of one document by its exact filename, "+
		"optionally with size, modified time and privacy level. Structured output of a file "+
		"that is not valid UTF-8 carries base64 content with encoding set to 'base64'."),
	mcp.WithString("filename",
		mcp.Required(),
		mcp.Description("Exact, case-sensitive name of a file in the documents directory"),
		mcp.MinLength(1),
		mcp.MaxLength(query.MaxFilenameLength),
	),
	mcp.WithBoolean("include_metadata",
		mcp.Description("Include file metadata in the response"),
		mcp.DefaultBool(false),
	),
	mcp.WithString("response_format",
		mcp.Description("Output format: 'narrative' (Markdown) or 'structured' (JSON)"),
		mcp.Enum("narrative", "structured", "markdown", "json"),
		mcp.DefaultString("narrative"),
	),
)

// listFilesTool defines the list_files MCP tool.
var listFilesTool = readOnlyTool("list_files",
	mcp.WithTitleAnnotation("List All Files"),
	mcp.WithDescription("List every document with its size, privacy level and a short content preview, "+
		"optionally filtered by a filename glob and a privacy level."),
	mcp.WithString("pattern",
		mcp.Description("Glob matched against filenames, e.g. '*.txt' or 'report*'"),
	),
	mcp.WithString("privacy_filter",
		mcp.Description("Only list files with exactly this privacy level"),
		mcp.Enum("public", "sensitive", "confidential"),
	),
	mcp.WithString("response_format",
		mcp.Description("Output format: 'narrative' (Markdown) or 'structured' (JSON)"),
		mcp.Enum("narrative", "structured", "markdown", "json"),
		mcp.DefaultString("narrative"),
	),
)
