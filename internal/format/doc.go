// Package format prints a parsed formula back as canonical text.
//
// Назначение: стабильный вывод формулы для команды fmt и для сравнения формул.
// Не делает: разбор, вычисление, сохранение исходных пробелов.
// Зависимости: internal/ast.
package format
