// Package ports renders FreeBSD port skeletons and finds existing ports.
//
// # Descriptor
//
// A [Descriptor] holds the resolved fields of one port. [Descriptor.WriteTo]
// renders them as a port Makefile in a fixed block order:
//
//	# Created by: Jane Doe <jane@example.org>
//	# $FreeBSD$
//
//	PORTNAME=	flask
//	PORTVERSION=	2.0.0
//	CATEGORIES=	devel python
//	MASTER_SITES=	CHEESESHOP
//	PKGNAMEPREFIX=	${PYTHON_PKGNAMEPREFIX}
//
//	MAINTAINER=	jane@example.org
//	COMMENT=	Simple framework for building complex web applications
//
//	LICENSE=	BSD3CLAUSE
//	LICENSE_FILE=	${WRKSRC}/LICENSE.rst
//
//	RUN_DEPENDS=	${PYTHON_PKGNAMEPREFIX}Jinja2>=3.0:${PORTSDIR}/devel/py-Jinja2
//
//	USES=		python:3.8+ # 3.6, 3.7, 3.8, 3.9
//	USE_PYTHON=	autoplist distutils
//
//	.include <bsd.port.mk>
//
// Keys shorter than seven characters get an extra tab so values line up.
// Optional blocks are left out entirely; the output for a given Descriptor
// is byte-for-byte stable.
//
// # Lookups
//
// [TreeLookup] and [IndexLookup] implement requirement.Lookup against a
// checked-out ports tree and a ports INDEX file respectively.
package ports
