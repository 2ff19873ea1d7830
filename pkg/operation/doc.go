/*
Package operation converts Unity asset files in place.

	+-------------+
	|   Runner    |
	| (per file)  |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Converter  +----->+   rewrite   |
	| (read/write)|      +-------------+
	+------+------+
	       |  json only
	+------+------+
	|  reencode   |
	+-------------+

🎯 Purpose:
- Reads each file fully, rewrites its lines and writes it back
- For the json format, writes the intermediate YAML, then replaces it
  with the JSON encoding of the document stream
- Reports every file to a status.Reporter

🔄 Flow:
1. Files are converted one after another, in the order given
2. The first error stops the run; files already converted stay converted
3. A file that fails to re-encode is left as intermediate YAML

⚡ Opt-in hardening:
- Atomic: write through a temp file and rename, skip the intermediate write
- Backup: keep <file>.bak with the original bytes
- KeepGoing: record the error and continue with the next file
- Jobs > 1: convert independent files concurrently
- DryRun: write nothing, record a diff instead
*/
package operation
