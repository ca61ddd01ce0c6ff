// Package stream publishes a running simulation to websocket clients.
//
// A Server owns one Simulator and advances it once per frame, broadcasting a
// JSON Frame with every body's position and velocity. Clients can send
// Control messages to pause, resume, start or stop the simulation.
package stream
