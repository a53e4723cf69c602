package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	_ "modernc.org/sqlite"
)

func db_init(db_path string) *sql.DB {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?mode=ro", db_path))
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}

	var db_version string
	if err := db.QueryRow("select sqlite_version()").Scan(&db_version); err != nil {
		log.Println("warning: unable to get sqlite version: ", err)
	} else {
		log.Println("database version: ", db_version)
	}
	return db
}

func main() {
	var db_path string

	flag.StringVar(&db_path, "db-path", "/var/areagraph/db/areagraph.sqlite", "Path of the areagraph sample database")
	flag.Parse()

	db := db_init(db_path)
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("warning: error when closing database: ", err)
		}
	}()

	rows, err := db.Query(`SELECT id, x, y, r, inside, created FROM areagraph_samples ORDER BY id ASC`)
	if err != nil {
		log.Fatal("cannot select samples: ", err)
	}
	defer rows.Close()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tx\ty\tr\tinside\tcreated")
	n := 0
	for rows.Next() {
		var id int64
		var x, y, r float64
		var inside bool
		var created string
		if err := rows.Scan(&id, &x, &y, &r, &inside, &created); err != nil {
			log.Fatal("row scan failed: ", err)
		}
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%t\t%s\n", id, x, y, r, inside, created)
		n++
	}
	if err := rows.Err(); err != nil {
		log.Fatal(err)
	}
	tw.Flush()
	log.Println("dumped ", n, "samples")
}
