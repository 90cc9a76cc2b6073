// Command seed creates or updates a dashboard user from the command line,
// and can generate a VAPID key pair for push notifications.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/database"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/push"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
)

func main() {
	dbPath := flag.String("db", "sapiens.db", "path to the database file")
	email := flag.String("email", "", "user email")
	name := flag.String("name", "", "display name (defaults to email)")
	password := flag.String("password", "", "user password")
	genVAPID := flag.Bool("vapid", false, "generate a VAPID key pair and exit")
	flag.Parse()

	if *genVAPID {
		pub, priv, err := push.GenerateVAPIDKeys()
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate VAPID keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SAPIENS_VAPID_PUBLIC_KEY=%s\n", pub)
		fmt.Printf("SAPIENS_VAPID_PRIVATE_KEY=%s\n", priv)
		return
	}

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email user@example.com -password secret [-name Name] [-db sapiens.db]")
		os.Exit(1)
	}
	if *name == "" {
		*name = *email
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	users := store.NewUserStore(db)
	existing, err := users.GetByEmail(*email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "look up user: %v\n", err)
		os.Exit(1)
	}

	if existing != nil {
		if err := users.SetPassword(existing.ID, hash); err != nil {
			fmt.Fprintf(os.Stderr, "set password: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("updated password for %s (id %d)\n", existing.Email, existing.ID)
		return
	}

	user, err := users.Create(*email, *name, &hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created %s (id %d)\n", user.Email, user.ID)
}
