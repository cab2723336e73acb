package extract

import (
	"os"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/feedmerge/pkg/digest"
	"github.com/KonishchevDmitry/feedmerge/pkg/markup"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(
		`<rss><channel><item><title>Hello</title><link>http://x</link><pubDate>Mon</pubDate><guid>abc</guid>` +
			`<encoded><![CDATA[<p>hi</p>]]></encoded></item></channel></rss>`))
	require.NoError(t, err)

	require.Equal(t, []Item{{
		Title:          "Hello",
		Link:           "http://x",
		PubDate:        "Mon",
		EncodedContent: "<p>hi</p>",
		GUID:           digest.Hash("abc"),
	}}, items)
}

func TestDocumentOrder(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(heredoc.Doc(`
		<rss>
			<channel>
				<item><title>1</title></item>
				<item><title>2</title></item>
				<item></item>
				<item><title>4</title></item>
			</channel>
		</rss>
	`)))
	require.NoError(t, err)

	require.Equal(t, []Item{{Title: "1"}, {Title: "2"}, {}, {Title: "4"}}, items)
}

func TestDocumentWithoutItems(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(heredoc.Doc(`
		<rss>
			<channel>
				<title>Feed title</title>
				<link>http://example.com/</link>
			</channel>
		</rss>
	`)))
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestTextOutsideOfItemsIsDropped(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(heredoc.Doc(`
		<rss>
			<channel>
				<title>Feed title</title>
				<link>http://example.com/</link>
				<item><title>Item</title></item>
				<pubDate>Sat, 04 Apr 2015 00:00:00 GMT</pubDate>
				<encoded><![CDATA[feed content]]></encoded>
			</channel>
		</rss>
	`)))
	require.NoError(t, err)
	require.Equal(t, []Item{{Title: "Item"}}, items)
}

func TestIdentifierFragments(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(`<rss><item><guid>abc<!-- split -->def<?pi?>ghi</guid></item></rss>`))
	require.NoError(t, err)
	require.Len(t, items, 1)

	guid := items[0].GUID
	require.Equal(t, digest.Hash("abc")+digest.Hash("def")+digest.Hash("ghi"), guid)
	require.NotEqual(t, digest.Hash("abcdefghi"), guid)
	require.Len(t, guid, 3*digest.Size)
}

func TestEscapedText(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(heredoc.Doc(`
		<rss><item>
			<title><![CDATA[Ignored]]>Kept</title>
			<link><![CDATA[http://ignored]]></link>
			<guid><![CDATA[ignored]]></guid>
			<encoded>a<![CDATA[<b>b</b>]]>c<![CDATA[d]]></encoded>
		</item></rss>
	`)))
	require.NoError(t, err)

	require.Equal(t, []Item{{
		Title:          "Kept",
		EncodedContent: "a<b>b</b>cd",
	}}, items)
}

func TestWhitespaceIsIgnored(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte("<rss><item><title> </title><link>\n\t</link><guid> id </guid></item></rss>"))
	require.NoError(t, err)

	require.Equal(t, []Item{{GUID: digest.Hash(" id ")}}, items)
}

func TestElementTracking(t *testing.T) {
	t.Parallel()

	document := []byte(`<rss><item><encoded>a<b>x</b>c</encoded><title>t<i/>u</title>tail</item></rss>`)

	items, err := Document(document)
	require.NoError(t, err)
	require.Equal(t, []Item{{EncodedContent: "a", Title: "t"}}, items)

	items, err = Document(document, WithElementStack())
	require.NoError(t, err)
	require.Equal(t, []Item{{EncodedContent: "ac", Title: "tu"}}, items)
}

func TestNestedItem(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(`<rss><item><title>outer</title><item><title>inner</title></item></item></rss>`))
	require.ErrorIs(t, err, ErrNestedItem)
	require.Nil(t, items)
}

func TestMalformedDocument(t *testing.T) {
	t.Parallel()

	items, err := Document([]byte(`<rss><item><title>Hello</title></item><item><title>Broken</item></rss>`))
	require.Nil(t, items)

	var syntaxErr *markup.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestHandle(t *testing.T) {
	t.Parallel()

	extractor := New()
	for _, event := range []markup.Event{
		{Kind: markup.Text, Text: "dropped"},
		{Kind: markup.StartElement, Name: "item"},
		{Kind: markup.StartElement, Name: "title"},
		{Kind: markup.Text, Text: "Hel"},
		{Kind: markup.Other},
		{Kind: markup.Text, Text: "lo"},
		{Kind: markup.EndElement, Name: "title"},
		{Kind: markup.Whitespace, Text: "\n"},
	} {
		require.NoError(t, extractor.Handle(event))
	}
	require.Empty(t, extractor.Items())

	require.NoError(t, extractor.Handle(markup.Event{Kind: markup.EndElement, Name: "item"}))
	require.Equal(t, []Item{{Title: "Hello"}}, extractor.Items())
}

func TestWordPressFeed(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/wordpress.xml")
	require.NoError(t, err)

	items, err := Document(data)
	require.NoError(t, err)

	require.Equal(t, []Item{{
		Title:          "Play-to-earn guild raises $5M",
		Link:           "https://news.example.com/p2e-guild-raises-5m/",
		PubDate:        "Tue, 10 Oct 2023 09:12:45 +0000",
		EncodedContent: "<p>A guild raised <strong>$5M</strong>.</p>",
		GUID:           digest.Hash("https://news.example.com/?p=1001"),
	}, {
		Title:          "Tom & Jerry NFT drop",
		Link:           "https://news.example.com/tom-jerry-nft-drop/",
		PubDate:        "Mon, 09 Oct 2023 18:00:00 +0000",
		EncodedContent: "<p>First part.</p><p>Second part.</p>",
		GUID:           digest.Hash("https://news.example.com/?p=1000"),
	}}, items)
}
