package server

// Server объединяет HTTP-серверы отдельных сущностей.
type Server struct {
	ExtractServer
	ListingServer
	TaskServer
}

func NewServer(
	extractServer ExtractServer,
	listingServer ListingServer,
	taskServer TaskServer,
) Server {
	return Server{
		ExtractServer: extractServer,
		ListingServer: listingServer,
		TaskServer:    taskServer,
	}
}
