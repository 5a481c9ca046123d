// Package stamper collects the variables a scaffold is rendered with. It
// reads "KEY VALUE" stamp files (such as build workspace status output)
// and layers stamps, config variables and command line overrides into one
// variable set. Override values may reference stamps as {KEY}.
package stamper
