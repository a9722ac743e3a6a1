package token

var keywords = map[string]Kind{
	"if":     KwIf,
	"else":   KwElse,
	"do":     KwDo,
	"while":  KwWhile,
	"repeat": KwRepeat,
	"until":  KwUntil,
	"read":   KwRead,
	"write":  KwWrite,
	"int":    KwInt,
	"float":  KwFloat,
	"double": KwDouble,
	"main":   KwMain,
	"return": KwReturn,
	"cin":    KwCin,
	"cout":   KwCout,
}

var keywordText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		m[k] = s
	}
	return m
}()

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые - только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
