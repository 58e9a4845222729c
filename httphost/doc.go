// Package httphost exposes a run.Orchestrator over HTTP with gin.
//
// Routes under /v1:
//
//	GET    /grid            snapshot: size, endpoints, glyph rows, tally
//	GET    /cell?x=&y=      world-coordinate hit test
//	POST   /cells/toggle    {"x":1,"y":2} flips a wall
//	POST   /source          {"x":1,"y":2} moves the source
//	POST   /dest            {"x":1,"y":2} moves the destination
//	POST   /runs            {"strategy":"astar"} starts a run
//	DELETE /runs            cancels the active run
//	GET    /runs/status     running flag and the last result
//	POST   /maze            {"strategy":"backtracker","seed":7}
//	POST   /clear           {"walls":true} clears search flags, optionally walls
//
// Errors are JSON objects {"error": "..."}; a maze request during a run
// answers 409 Conflict.
package httphost
