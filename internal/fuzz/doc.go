// Package fuzztests houses Go fuzz harnesses for the analysis cascade
// (lexer -> parser -> sema -> vm). They guard against panics, hangs and
// broken span invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через стадии и саму сессию.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
