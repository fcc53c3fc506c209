// Command demo fills the configured journal with a few sample entries.
package main

import (
	"context"
	"fmt"

	"tableflip.dev/journal/pkg/config"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/store"
)

var demo = []struct{ title, text string }{
	{"First day", "Started keeping a journal today. Not sure what to write yet,\nbut the coffee was good."},
	{"Beach", "Went to the beach with Sam. The water was freezing and we stayed anyway."},
	{"Deadline", "Shipped the release an hour before the cutoff. Tired, relieved, a little proud."},
	{"Rainy Sunday", "Read most of a novel and ignored my phone. Should do that more often."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	b, err := store.Open(cfg.Backend, cfg.BasePath())
	if err != nil {
		panic(err)
	}
	defer b.Close()

	ctx := context.Background()
	j := journal.New(b, journal.WithTimestampLayout(cfg.TimestampLayout))
	if _, ok, _ := j.LoadProfileName(ctx); !ok {
		if err := j.SaveProfileName(ctx, "Demo"); err != nil {
			panic(err)
		}
	}
	for _, d := range demo {
		if _, err := j.AddEntry(ctx, d.title, d.text); err != nil {
			panic(err)
		}
	}

	for _, e := range j.ListEntries(ctx) {
		fmt.Println(e.String())
	}
}
