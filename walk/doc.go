// Walking a tree
//
// A Config is built once and may start any number of traversals:
//
//	opts := walk.DefaultOptions()
//	opts.Pattern = `\.go$`
//	opts.IncludeDirs = false
//	opts.MaxDepth = -1 // unlimited
//	cfg, err := walk.NewConfig("/src", opts)
//	if err != nil {
//		return err
//	}
//
//	// Range over entries; a failure arrives as the last pair.
//	for e, err := range cfg.All() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(e.Depth, e.Path)
//	}
//
//	// Or pull one at a time.
//	w := cfg.Walker()
//	for w.Next() {
//		if e := w.Entry(); e.Type == walk.TypeDir && e.Name == "vendor" {
//			w.SkipDir()
//		}
//	}
//	if err := w.Err(); err != nil {
//		return err
//	}
//
//	// Or hand each entry to a callback.
//	err = cfg.Walk(ctx, walk.Chain(
//		walk.FormatHandler(os.Stdout, "{depth} {type} {}"),
//		walk.LoggingMiddleware(logger),
//	))
package walk
