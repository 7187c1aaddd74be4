package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"meetup-bot/repositories"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"go.mongodb.org/mongo-driver/bson"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/meetups"`
	TimeZone       string `envconfig:"TIME_ZONE" default:"America/Los_Angeles"`
	// INSPECT_COLOURS highlights states in the table
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatal("Config error: ", err)
	}
	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	importPath := flag.String("import", "", "Import a mongoexport file (one extended JSON document per line) before listing")
	flag.Parse()

	zone, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		log.Fatal("Unknown time zone: ", err)
	}
	color.Enable = config.Colours

	if *importPath != "" {
		if err = importFile(*dbPath, *importPath); err != nil {
			log.Fatal("Import failed: ", err)
		}
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Version", "State", "Announcement", "Title", "Time"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := repositories.Prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				m, err := repositories.DecodeValue(v)
				if err != nil {
					table.Append([]string{key, "?", color.Red.Render("unreadable"), "-", err.Error(), "-"})
					return nil
				}
				table.Append([]string{
					key,
					strconv.Itoa(m.SchemaVersion),
					stateColour(m.State.Name()),
					m.Announcement.Name(),
					m.Title,
					m.Timestamp.In(zone).Format("Jan 02 2006 15:04 MST"),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func stateColour(state string) string {
	switch state {
	case "created":
		return color.Green.Render(state)
	case "cancelled":
		return color.Red.Render(state)
	default:
		return color.Gray.Render(state)
	}
}

// importFile stores every document of a mongoexport file as is. Records are migrated when read.
func importFile(dbPath, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return err
	}
	defer db.Close()
	repository := repositories.NewBadgerMeetupRepository(db, logs.GetLoggerFromString("WARN"))

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	imported := 0
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var raw bson.M
		if err = bson.UnmarshalExtJSON([]byte(text), false, &raw); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if _, err = repository.Import(raw); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}
	if err = scanner.Err(); err != nil {
		return err
	}
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf(" imported %d meetups ", imported)))
	return nil
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
