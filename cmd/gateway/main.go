package main

import (
	"os"

	"github.com/justic/video-gateway/internal/app"
)

func main() {
	os.Exit(app.Run("gateway", run))
}
