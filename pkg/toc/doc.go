// Package toc finds headings in HTML markup, gives them anchor ids and builds
// a navigable menu tree from them.
//
// Two collaborators do the work: a MarkupFixer inserts id attributes into
// heading tags, and a Generator turns the heading hierarchy into a MenuItem
// tree or an HTML list. Both operate on a Range of heading levels and share
// the same slug assignment, so links produced by the Generator always point
// at the ids the Fixer writes.
package toc
