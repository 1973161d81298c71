package intervalreload

// roundTripMillis is the network transit time: the locally measured
// elapsed time minus the time the server held the packet.
func roundTripMillis(requestMono, responseMono, receive, transmit int64) int64 {
	return (responseMono - requestMono) - (transmit - receive)
}

// clockOffsetMillis is the estimated server minus local clock difference.
func clockOffsetMillis(originate, receive, transmit, responseWall int64) int64 {
	return ((receive - originate) + (transmit - responseWall)) / 2
}
