/*
Package trc decodes Tomb Raider 4 level files (.tr4, .trc) into a Level.

A level file is little-endian. It holds the texture atlas pages, the world (rooms, meshes,
animations, entities and sound tables) and the audio samples. The atlas pages and the world
are stored in zlib compressed sections, each framed by its inflated size and its compressed
size.

Usage:

	f, err := os.Open("karnak.tr4")
	if err != nil {
		// Do something
	}
	defer f.Close()

	level, err := trc.Decode(ctx, f)
	if err != nil {
		// Do something
	}

	for _, room := range level.LevelData.Rooms {
		fmt.Println(room.X, room.Z, len(room.Vertices))
	}

Decoding is structural. Ids stored in the records, such as Room.FlipRoomID or
Entity.ModelID, are returned as they are and are not checked against the tables they refer
to.

A Decoder can be reused and shared between goroutines:

	dec, err := trc.NewDecoder(ctx, trc.WithMaxSectionSize(64*sizes.MiB), trc.WithLogger(logger))
	if err != nil {
		// Do something
	}
	level, err := dec.DecodeBytes(ctx, b)

Errors carry the offset they happened at:

	var de *trc.DecodeError
	if errors.As(err, &de) {
		fmt.Println(de.Section, de.Offset)
	}
*/
package trc
