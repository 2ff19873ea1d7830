/*
Package status reports conversion progress for unityconv.

	            +-------------+
	            |  Reporter   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Console  |           |   Nop   |
	|  (pterm)  |           | (tests) |
	+-----------+           +---------+

🎯 Purpose:
- Shows which files were converted, left unchanged or failed
- Mirrors every event to the context zerolog logger
- Prints dry run diffs when asked to

Reporting is a side effect only. Nothing a Reporter does changes what is
written to the converted files, so library callers can pass Nop.

🤝 Interfaces:
- Reporter: receives Start, File and Finish events
- FileFormatter: turns events into log messages
*/
package status
