/*
The sync package implements bolt-sync's sync algorithm. It compares a local
directory with a remote project, and applies the differences in one
direction.

A sync happens in three steps:
1) Snapshot -- Both sides are read into a FileTree. Directories named in the
   config's exclude_dirs are pruned, and files that aren't text are dropped.
2) Plan -- The trees are compared according to the direction of the sync.
   Files that only exist on the source side are new, and files whose contents
   differ are modified. Files that only exist on the destination are never
   touched, but are listed in the plan so that the user knows about them.
3) Apply -- The Executor shows the plan, asks for confirmation, and then
   writes each file to the destination. Remote files are backed up before
   they're overwritten.

Paths are always relative to the root of the project, and use forward slashes
on both sides.

Only files are synced. Empty directories and binary files are ignored.
*/
package sync
