/*
Package operation reconciles the snippet mode a user asked for with the mode
materialized in the active snippet file.

	+------------+     desired     +------------+
	|  Settings  | --------------> |  Resolver  |
	+------------+                 +-----+------+
	                                     | current (inferred from content)
	                               +-----+------+
	                               | snippets/  |
	                               |  *.json    |
	                               +------------+

🔄 Flow:
1. Read the desired mode from settings
2. Infer the current mode from snippets.json (missing file reads as Full)
3. When they differ, persist the desired mode, copy the mode's source file
   over snippets.json and ask the host to reload
4. When they match, do nothing

Calling ResolveAndSync twice with the same mode is a no-op the second time.
*/
package operation
