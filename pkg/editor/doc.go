/*
Package editor is the command core of the site builder.

An Editor owns one domain.State. Every change goes through Dispatch with
one of the Command types of this package; commands run one at a time to
completion. Document edits push a whole-document snapshot onto the undo
history, so Undo and Redo just swap snapshots.

Front ends translate gestures into commands with the helpers in this
package:

  - Drag turns a palette drag and drop into InsertIntoContainer or InsertAtRoot.
  - Shortcut turns key presses into Delete, Undo and Redo.
  - Draft stages property edits and turns them into one Update.

Adapters that receive commands as data use Decode.
*/
package editor
