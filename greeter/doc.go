// Package greeter is the Go rendition of the application the scaffold
// templates generate: a web service whose "/" route returns the fixed
// greeting "Hello from <application>!". Routing uses gorilla/mux; Server
// binds the port and shuts down gracefully when its context ends.
package greeter
