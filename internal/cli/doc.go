// Package cli provides the interactive Memories command-line client.
//
// It is a thin caller of the auth and gallery services: every command reads
// its input from the prompt or its arguments, calls one service operation and
// prints the outcome. Errors are shown through common.UserMessage, so storage
// and credential details never reach the terminal.
//
// Commands:
//   - register, login, loginemail, logout, whoami
//   - upload, images, editimage, deleteimage
//   - albums, newalbum, renamealbum, deletealbum
//   - addtoalbum, removefromalbum, showalbum
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
