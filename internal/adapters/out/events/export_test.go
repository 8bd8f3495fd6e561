package events

type Conn = conn

func NewNATSPublisherWithConn(c Conn, prefix string) *NATSPublisher {
	return newNATSPublisher(c, prefix)
}
