/*
Package status manages file storage and target tracking for schemapatch.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Targets  |           |  Logs   |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Manages file system operations for patch targets
- Writes patched content atomically (temp file + rename)
- Tracks target status (pending, patched, applied, conflict)
- Provides user-friendly status reporting

🔄 Flow:
1. Receives patched content from the patch package
2. Writes it back atomically, optionally after taking a backup
3. Tracks the resulting target status
4. Reports changes in a user-friendly format

🤝 Interfaces:
- FileManager: Handles file operations
- StatusReporter: Reports status changes
- TargetFormatter: Formats status messages

📝 Design Philosophy:
All writes go through WriteFileAtomic so a crash mid-write leaves either the
old or the new content on disk, never a mix. The package never inspects or
normalizes content; it moves bytes.
*/
package status
