/*
Package session manages live page sessions.

A Manager creates sessions from page markup, keeps them in a
ports.SessionStore and serialises commands per session with reference-counted
locks, so concurrent requests for one page are handled one at a time while
different pages proceed in parallel.
*/
package session
