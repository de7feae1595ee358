// Package docsim embeds the docsim comparison pipeline in a Go program.
//
// A Client compares two documents (plain text, PDF or DOCX) by TF-IDF cosine
// similarity. With a result store configured, every comparison is recorded and
// can be listed later.
//
//	client, _ := docsim.New(ctx, docsim.WithSQLite("docsim.db"))
//	defer client.Close()
//
//	cmp, err := client.CompareFiles(ctx, "essay.docx", "source.pdf")
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Similarity Score:", cmp.Percent)
//
//	recent, _ := client.Recent(ctx, 10)
//
// Without WithRedis, WithValkey or WithSQLite the client keeps no history and
// Recent returns ErrHistoryDisabled.
package docsim
