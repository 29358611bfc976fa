// Package cabinet drives a full generation run: walk the mods checkout,
// extract metadata through the cache, match READMEs, resolve title
// collisions, render the wiki checkout, and commit the result. One run
// holds a file lock for its duration; a second concurrent run refuses to
// start.
package cabinet
