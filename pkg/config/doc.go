/*
Package config loads the optional unityconv configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Picks the output format (text or json)
- Holds the %YAML version written by the json format
- Narrows directory searches (extensions, ignore patterns)
- Turns on the optional write hardening (atomic, backup, keep_going)

🔄 Flow:
1. Discover looks for .unityconv.{yaml,yml,json,hcl} in the working directory
2. The parser registered for the extension decodes the file
3. Validate fills defaults and rejects bad values
4. Command line flags override whatever the file said

📝 HCL files can read the environment:

	format       = "json"
	yaml_version = env.UNITY_YAML_VERSION
*/
package config
