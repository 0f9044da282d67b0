// Package fuzztests houses Go fuzz harnesses for the formula pipeline
// (source -> lexer -> parser -> eval). They guard against panics, hangs and
// broken spans on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, парсер и
// formula.Evaluate и проверять, что сбой всегда описан одной диагностикой.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
