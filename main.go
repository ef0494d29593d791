/* main.go
 * The "main" method for running the standings server
 * Usage: go run main.go -addr="<addr>" -db="<database>"
 */

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"tak-standings/api/api"
	"tak-standings/web"
)

func main() {
	// A .env file is optional; environment variables may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("error loading .env file: %v", err)
	}

	// Flags
	addrPtr := flag.String("addr", ":8080", "Address for the web server to listen on, e.g. :8080")
	dbPtr := flag.String("db", "tak-standings", "Mongo database name")
	flag.Parse()

	a, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_URI"), clock.New())
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err := a.Store.GetClient().Disconnect(context.TODO()); err != nil {
			log.Printf("error disconnecting from store: %v", err)
		}
	}()

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("ADMIN_PASSWORD is not set, admin routes are disabled")
	}

	server := web.NewServer(web.Config{
		Addr:          *addrPtr,
		API:           a,
		AdminPassword: adminPassword,
	})

	shutdown := make(chan bool)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		shutdown <- true
	}()

	server.ListenAndServe(shutdown, &wg)
	wg.Wait()
}
