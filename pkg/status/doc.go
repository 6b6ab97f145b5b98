/*
Package status owns the files in the snippets directory.

	+-----------------+        +-----------------+
	| snippets-*.json | -----> |  snippets.json  |
	|    (sources)    |  copy  |    (active)     |
	+-----------------+        +-----------------+

🎯 Purpose:
- Reads the active snippet file so its mode can be inferred
- Replaces the active file with a mode source, byte for byte
- Reports whether a copy created, modified or left the file unchanged

⚡ Writes go through a temp file and a rename, so the completion engine never
reads a half written snippets.json.
*/
package status
