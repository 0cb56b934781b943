package main

import "mediconnect_backend/internal/app"

func main() {
	app.Run()
}
