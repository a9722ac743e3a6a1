package diag

import (
	"fmt"

	"compilab/internal/stage"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynUnclosedDelimiter Code = 2005
	SynColonOutsideCase  Code = 2006

	// Семантические
	SemaInfo              Code = 3000
	SemaRedeclared        Code = 3001
	SemaUndeclared        Code = 3002
	SemaModuloOperand     Code = 3003
	SemaNarrowing         Code = 3004
	SemaUnused            Code = 3005
	SemaNeverAssigned     Code = 3006
	SemaReturnOutsideMain Code = 3007

	// Исполнение
	RunInfo          Code = 4000
	RunDivByZero     Code = 4001
	RunInputEOF      Code = 4002
	RunBadInput      Code = 4003
	RunStepLimit     Code = 4004
	RunUninitialized Code = 4005

	// Внутренние ошибки анализаторов
	InternalAnalyzer Code = 9001
	InternalLoadFile Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynColonOutsideCase:         "':' outside of a case",
	SemaInfo:                    "Semantic information",
	SemaRedeclared:              "Variable already declared",
	SemaUndeclared:              "Variable used without declaration",
	SemaModuloOperand:           "'%' requires integer operands",
	SemaNarrowing:               "Implicit conversion loses precision",
	SemaUnused:                  "Variable declared but never used",
	SemaNeverAssigned:           "Variable read but never assigned",
	SemaReturnOutsideMain:       "return outside of main",
	RunInfo:                     "Runtime information",
	RunDivByZero:                "Division by zero",
	RunInputEOF:                 "Input exhausted",
	RunBadInput:                 "Malformed input number",
	RunStepLimit:                "Step limit exceeded",
	RunUninitialized:            "Read of uninitialised variable",
	InternalAnalyzer:            "Analyzer failure",
	InternalLoadFile:            "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic-9000)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Stage returns the analysis stage a code range belongs to.
// ok is false for internal and unknown codes.
func (c Code) Stage() (stage.Stage, bool) {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return stage.Lexical, true
	case ic >= 2000 && ic < 3000:
		return stage.Syntax, true
	case ic >= 3000 && ic < 4000:
		return stage.Semantic, true
	case ic >= 4000 && ic < 5000:
		return stage.Execution, true
	}
	return stage.Lexical, false
}
