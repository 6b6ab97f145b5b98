/*
Package config holds the persisted user settings that drive snippet mode and
completion.

	            +-------------+
	            |    Store    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads settings from a file, picking the parser by extension
- Applies defaults for absent or unrecognised values
- Writes updates back in the same format
- Tells listeners which keys changed

Keys:

	wpSnippets.snippetMode      "Full" | "Flat" (default "Full")
	wpSnippets.removeArguments  bool (default false)
	wpSnippets.filePatterns     []string (default ["**\/*.php"])

JSON files use the flat dotted keys of an editor settings.json and keep any
other keys they contain. YAML files nest the keys under wpSnippets, HCL files
use a wpsnippets block with snake_case attributes.
*/
package config
