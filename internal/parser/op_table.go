package parser

import (
	"compilab/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precOr             = 1 // |
	precAnd            = 2 // &
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
	precPower          = 7 // ^
)

// binaryPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный); 0 - не бинарный оператор.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Pipe:
		return precOr, false
	case token.Amp:
		return precAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.Caret:
		return precPower, true
	default:
		return 0, false
	}
}
