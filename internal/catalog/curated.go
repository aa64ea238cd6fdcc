package catalog

import "github.com/bookswipe/bookswipe-server/internal/domain"

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func curatedBook(title, author, publisher string, year int, isbn, summary, authorBio string) domain.Book {
	cover := "https://covers.openlibrary.org/b/isbn/" + isbn + "-L.jpg"
	return domain.Book{
		ISBN:          isbn,
		Title:         title,
		Author:        author,
		Publisher:     strptr(publisher),
		Year:          intptr(year),
		ImageURLSmall: strptr(cover),
		ImageURLMed:   strptr(cover),
		ImageURLLarge: strptr(cover),
		Summary:       strptr(summary),
		AuthorBio:     strptr(authorBio),
	}
}

// CuratedBooks is the fixed deck source: a small hand-picked list, not
// a recommendation feed.
func CuratedBooks() []domain.Book {
	return []domain.Book{
		curatedBook(
			"Diary of a Wimpy Kid", "Jeff Kinney", "Amulet Books", 2007,
			"9780810993136",
			"Greg Heffley chronicles the awkward, hilarious trials of middle school in his illustrated diary.",
			"Jeff Kinney is an American author and cartoonist, best known for creating the Diary of a Wimpy Kid series.",
		),
		curatedBook(
			"Five on a Treasure Island (Famous Five #1)", "Enid Blyton", "Hodder Children's Books", 1942,
			"9781444929475",
			"Julian, Dick, Anne, George and Timmy the dog discover a shipwreck and a secret treasure on Kirrin Island.",
			"Enid Blyton wrote hundreds of children's books, including the Famous Five and Secret Seven series.",
		),
		curatedBook(
			"Harry Potter and the Philosopher's Stone", "J.K. Rowling", "Bloomsbury", 1997,
			"9780747532699",
			"An orphan discovers he is a wizard and attends Hogwarts, beginning an adventure against dark forces.",
			"J.K. Rowling is the author of the Harry Potter series, a global phenomenon in children's literature.",
		),
		curatedBook(
			"Percy Jackson and the Lightning Thief", "Rick Riordan", "Disney-Hyperion", 2005,
			"9780786838653",
			"Percy discovers he is a demigod and embarks on a quest to retrieve Zeus's stolen lightning bolt.",
			"Rick Riordan is known for myth-inspired series like Percy Jackson and the Olympians.",
		),
		curatedBook(
			"The Hobbit", "J.R.R. Tolkien", "George Allen & Unwin", 1937,
			"9780261103283",
			"Bilbo Baggins joins a company of dwarves on a quest to reclaim their mountain home from the dragon Smaug.",
			"J.R.R. Tolkien was an English writer and philologist, author of The Hobbit and The Lord of the Rings.",
		),
		curatedBook(
			"Charlotte's Web", "E.B. White", "Harper & Brothers", 1952,
			"9780064400558",
			"A clever spider named Charlotte saves her friend Wilbur the pig with words spun into her web.",
			"E.B. White was an American essayist and children's author, also known for Stuart Little.",
		),
		curatedBook(
			"Matilda", "Roald Dahl", "Jonathan Cape", 1988,
			"9780142410370",
			"A brilliant girl with telekinetic powers outwits her dreadful parents and the tyrannical Miss Trunchbull.",
			"Roald Dahl wrote some of the best-loved children's stories of the 20th century.",
		),
		curatedBook(
			"The Lion, the Witch and the Wardrobe", "C.S. Lewis", "Geoffrey Bles", 1950,
			"9780064404990",
			"Four siblings step through a wardrobe into Narnia and join Aslan against the White Witch.",
			"C.S. Lewis was a British writer and scholar, author of The Chronicles of Narnia.",
		),
		curatedBook(
			"Nancy Drew: The Secret of the Old Clock", "Carolyn Keene", "Grosset & Dunlap", 1930,
			"9780448095011",
			"Teen sleuth Nancy Drew uncovers a hidden will while investigating a puzzling inheritance.",
			"'Carolyn Keene' is the collective pseudonym for authors of the Nancy Drew series.",
		),
		curatedBook(
			"The Hardy Boys: The Tower Treasure", "Franklin W. Dixon", "Grosset & Dunlap", 1927,
			"9780448089010",
			"Frank and Joe Hardy investigate a jewel theft linked to a mysterious tower.",
			"'Franklin W. Dixon' is a pen name used by various writers for the Hardy Boys series.",
		),
	}
}
