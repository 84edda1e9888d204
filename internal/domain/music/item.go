package music

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemType is the discriminator shared by index documents and search results.
type ItemType string

const (
	ItemSong   ItemType = "song"
	ItemArtist ItemType = "artist"
	ItemAlbum  ItemType = "album"
)

// DefaultItemType is searched when the caller does not name a type.
const DefaultItemType = ItemSong

var SupportedItemTypes = map[ItemType]bool{
	ItemSong:   true,
	ItemArtist: true,
	ItemAlbum:  true,
}

// ParseItemType returns DefaultItemType for an empty value and an error for
// anything outside SupportedItemTypes.
func ParseItemType(s string) (ItemType, error) {
	if s == "" {
		return DefaultItemType, nil
	}
	t := ItemType(s)
	if !SupportedItemTypes[t] {
		return "", fmt.Errorf("unsupported item type: %q", s)
	}
	return t, nil
}

// Item is a search result. Exactly one of Song, Artist or Album is set and
// Type says which one.
type Item struct {
	Type   ItemType
	Song   *Song
	Artist *Artist
	Album  *Album
}

func SongItem(s Song) Item     { return Item{Type: ItemSong, Song: &s} }
func ArtistItem(a Artist) Item { return Item{Type: ItemArtist, Artist: &a} }
func AlbumItem(a Album) Item   { return Item{Type: ItemAlbum, Album: &a} }

// ID returns the identifier of whichever entity the item holds.
func (i Item) ID() string {
	switch i.Type {
	case ItemSong:
		if i.Song != nil {
			return i.Song.ID
		}
	case ItemArtist:
		if i.Artist != nil {
			return i.Artist.ID
		}
	case ItemAlbum:
		if i.Album != nil {
			return i.Album.ID
		}
	}
	return ""
}

// MarshalJSON writes the entity fields flattened next to a "type" tag:
//
//	{"type":"song","id":"...","name":"...",...}
func (i Item) MarshalJSON() ([]byte, error) {
	var (
		fields []byte
		err    error
	)
	switch {
	case i.Type == ItemSong && i.Song != nil:
		fields, err = json.Marshal(i.Song)
	case i.Type == ItemArtist && i.Artist != nil:
		fields, err = json.Marshal(i.Artist)
	case i.Type == ItemAlbum && i.Album != nil:
		fields, err = json.Marshal(i.Album)
	default:
		return nil, fmt.Errorf("item of type %q has no matching payload", i.Type)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.WriteString(strconv.Quote(string(i.Type)))
	buf.WriteByte(',')
	buf.Write(fields[1:])
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the "type" tag first and decodes the payload into the
// matching entity. The variant is never guessed from the other fields.
func (i *Item) UnmarshalJSON(data []byte) error {
	var head struct {
		Type ItemType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case ItemSong:
		var s Song
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = SongItem(s)
	case ItemArtist:
		var a Artist
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*i = ArtistItem(a)
	case ItemAlbum:
		var a Album
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*i = AlbumItem(a)
	default:
		return fmt.Errorf("unknown item type %q", head.Type)
	}
	return nil
}
