package cmd

const usageText = `Ant globs
=========

Ant globs work like shell globs for a single path segment and add "**" for
any number of directories. Patterns use "/" as the separator on every
platform; "\" is accepted too.

    ?       one character of a file or directory name
    *       zero or more characters of a name
    **      zero or more whole directories

A leading "/" anchors a pattern to the directory being searched, not to the
root of the filesystem. A pattern without it may start at any depth. A
trailing "/" selects a directory together with everything below it.

Examples
--------

    *.py
        Every .py file in the tree: /foo.py and /bar/foo.py,
        but not /foo.pyc.

    /*.py
        .py files directly in the searched directory: /foo.py,
        but not /bar/foo.py.

    /myapp/**
        Everything under /myapp.

    /myapp/**/__init__.py
        Every __init__.py in /myapp and below.

    dir1/__init__.py
        An __init__.py directly inside any directory named dir1:
        /dir1/__init__.py and /a/b/dir1/__init__.py,
        but not /dir1/sub/__init__.py.

    **/dir1/__init__.py, /**/dir1/__init__.py
        The same as above.

    **/test/**
        Everything inside any directory named test, and any file
        named test.

    build/
        Any directory named build and everything below it.

Default excludes
----------------

Version-control metadata and editor noise (.git, .svn, CVS, __pycache__,
*~, .DS_Store and similar) are excluded unless --no-default-excludes is
given. An exclude always wins over an include.

    $ antglob -i "*.py" -e "__init__.py" "**/*test*/" "test_*" --no-default-excludes
`
