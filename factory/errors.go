/*
 * MIT License
 *
 * Copyright (c) 2024-2026 StellarForge
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package factory

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTypeName is returned when a factory or template is registered
	// without a type name.
	ErrEmptyTypeName = errors.New("type name must not be empty")
	// ErrNilBuilder is returned when a factory is registered without a
	// builder function.
	ErrNilBuilder = errors.New("builder must not be nil")
	// ErrTypeAlreadyRegistered is returned when a factory is registered
	// under a name that is already taken.
	ErrTypeAlreadyRegistered = errors.New("actor type already registered")
	// ErrTemplateAlreadyRegistered is returned when a template is registered
	// under a name that is already taken.
	ErrTemplateAlreadyRegistered = errors.New("template already registered")
	// ErrUnknownBaseType is returned when a template names a base type with
	// no registered factory.
	ErrUnknownBaseType = errors.New("template base type is not registered")
)

// NewErrTypeAlreadyRegistered decorates ErrTypeAlreadyRegistered with the
// offending type name.
func NewErrTypeAlreadyRegistered(typeName string) error {
	return fmt.Errorf("%w: %s", ErrTypeAlreadyRegistered, typeName)
}

// NewErrTemplateAlreadyRegistered decorates ErrTemplateAlreadyRegistered
// with the offending template name.
func NewErrTemplateAlreadyRegistered(name string) error {
	return fmt.Errorf("%w: %s", ErrTemplateAlreadyRegistered, name)
}

// NewErrUnknownBaseType decorates ErrUnknownBaseType with the offending base
// type name.
func NewErrUnknownBaseType(baseType string) error {
	return fmt.Errorf("%w: %s", ErrUnknownBaseType, baseType)
}
