// Package newsdesk loads the overlapping JSON exports of a live news feed,
// reconciles their field names, classifies every message into keyword
// categories and returns one deduplicated, timestamp-ordered dataset.
//
// Quick start:
//
//	records := newsdesk.Records() // default locations, relative to the working directory
//	for _, r := range records {
//	    fmt.Println(r.Source, r.MessageTypes)
//	}
//
// Use New with options for explicit locations, warnings and errors:
//
//	d, err := newsdesk.New(newsdesk.WithDataDir("exports"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := d.Load(ctx)
//
// Every Load re-reads the files; nothing is cached. A Newsdesk is safe for
// concurrent use.
package newsdesk
